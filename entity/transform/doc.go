/*
Package transform flattens decoded order documents into denormalized rows.

It is made externally accessible since it's useful for testing custom object store
or catalog implementations against realistic output, without running the full service.

The transformation is stateless and deterministic: orders are processed in input order,
and within each order its products are processed in input order, each pair producing
exactly one row.
*/
package transform
