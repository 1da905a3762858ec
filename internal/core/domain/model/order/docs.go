// Package order contains the order aggregate: the order root with its
// immutable item lines, the status lifecycle, and the first-to-claim
// driver slot. Authorization of reads and status transitions lives in the
// access policy (core/domain/services); persistence lives in the postgres
// adapter.
package order
