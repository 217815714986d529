// Package models defines the core domain models for Billetera.
//
// # Models
//
//   - User: registered account, identified by a stable user ID and a
//     verified lowercase email
//   - Expense: a single ledger entry owned by exactly one user
//   - Income: a single income entry owned by exactly one user
//   - CreditCard: a user's card with running decimal-string totals
//   - SharedExpenseInvitation: a proposal to mirror one expense into
//     another user's ledger, addressed by email
//
// # Design Principles
//
//  1. **Independent copies**: sharing an expense writes a second, fully
//     independent Expense row for the recipient. The two copies never
//     reference each other and deleting one never affects the other.
//  2. **Decimal-as-string amounts**: money fields are decimal strings,
//     parsed with shopspring/decimal at the edges, never floats.
//  3. **Opaque IDs**: every entity carries a UUID `*_id` field that is the
//     only identifier handed to clients.
//  4. **Derived expiry**: an invitation past its deadline is treated as
//     expired by every read and write path regardless of its stored status.
package models
