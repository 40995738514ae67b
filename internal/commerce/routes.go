package commerce

// Paths on the commerce API. Segments in braces are filled with fmt.Sprintf.
const (
	pathBooks         = "/api/books"
	pathBookSearch    = "/api/books/search"
	pathRatingAverage = "/ratings/average"
	pathRatings       = "/ratings"
	pathSearchHistory = "/api/search-history/%d"

	pathBookComments  = "/api/comments/book/%d"
	pathUserComments  = "/api/comments/user/%d"
	pathCommentCreate = "/api/comments/%d" // book id
	pathComment       = "/api/comments/%d" // comment id

	pathUserInfo       = "/api/infofind"
	pathInterests      = "/member/MyPage/%d/interests"
	pathInterestAdd    = "/member/MyPage/%d/add_interests"
	pathInterestDelete = "/member/MyPage/%d/delete_interests"

	pathCart       = "/api/cart/%d"
	pathCartAdd    = "/api/cart/add"
	pathCartUpdate = "/api/cart/update/%d"
	pathCartRemove = "/api/cart/remove/%d"

	pathUserCoupons  = "/coupons/user/%d"
	pathCouponCreate = "/coupons/create"

	pathOrderCreate   = "/orders/create"
	pathUserOrders    = "/orders/user/%d"
	pathOrderDelivery = "/api/delivery/order/%d"
	pathPay           = "/payments/pay_process"
	pathRefund        = "/payments/refund_process"
)

// SearchField selects which book attribute a search matches
type SearchField string

const (
	SearchByTitle     SearchField = "title"
	SearchByAuthor    SearchField = "author"
	SearchByPublisher SearchField = "publisher"
	SearchAny         SearchField = "search"
)
