// Package ledger implements the wallet ledger store: per-user balances
// in minor units backed by an append-only entry log. Every posting is one
// atomic read-modify-write on the wallet row, serialized per wallet by a
// row lock, so balance always equals the sum of credits minus debits over
// the wallet's entries.
package ledger
