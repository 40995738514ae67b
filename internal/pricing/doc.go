// Package pricing computes cart subtotals, coupon eligibility and payable
// totals, and derives refund eligibility for placed orders.
//
// Amounts are whole won (int64). A percent discount is rounded half-up:
// 12345 at 10% gives a discount of 1235. Totals never go below zero.
//
// Nothing here talks to the network or mutates coupons; marking a coupon as
// used happens on the commerce API when an order is paid. The numbers
// produced here are for display and are re-checked by the server.
package pricing
