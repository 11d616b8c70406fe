// Package jnab provides the account model of a personal-finance ledger: a set of
// checking, credit and cash accounts held in several currencies, each one
// recording a chronological list of transactions.
//
// The core functionalities include:
//   - Account Model: field-by-field construction of an Account through a single
//     write gate ([Account.Set]) that rejects unknown attributes, locks identity
//     attributes (ID, NAME, TYPE) after their first assignment, and coerces
//     enumerations from either their ordinal or their case-insensitive name.
//   - Transactions: ledger entries appended to an account, adjusting its balance.
//   - Data Persistence: JSON encoding of accounts and transactions with a stable
//     key order, suitable for human-readable JSONL files.
//
// This package serves as the foundational logic for the `jnab` interactive
// shell, see package [github.com/etnz/jnab/cmd].
package jnab
