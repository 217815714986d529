package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Timestamps are Unix
// seconds; money columns are decimal strings, never REAL.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    expense_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    expense_name TEXT NOT NULL,
    expense_amount TEXT NOT NULL,
    expense_category TEXT NOT NULL,
    payment_method TEXT NOT NULL,
    installment_quantity INTEGER NOT NULL DEFAULT 0,
    credit_card_id TEXT NOT NULL DEFAULT '',
    is_shared INTEGER NOT NULL DEFAULT 0,
    shared_with_email TEXT NOT NULL DEFAULT '',
    original_creator_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS incomes (
    income_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    income_amount TEXT NOT NULL,
    income_type TEXT NOT NULL,
    income_note TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_cards (
    credit_card_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    card_name TEXT NOT NULL,
    card_type TEXT NOT NULL,
    expense_amount_credit TEXT NOT NULL DEFAULT '0',
    payment_amount TEXT NOT NULL DEFAULT '0',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS shared_expense_invitations (
    invitation_id TEXT PRIMARY KEY,
    sender_email TEXT NOT NULL,
    recipient_email TEXT NOT NULL,
    expense_name TEXT NOT NULL,
    expense_amount TEXT NOT NULL,
    expense_category TEXT NOT NULL,
    payment_method TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    expires_at INTEGER NOT NULL,
    accepted_at INTEGER NOT NULL DEFAULT 0,
    declined_at INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_user_created ON expenses(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_expenses_user_card ON expenses(user_id, credit_card_id);
CREATE INDEX IF NOT EXISTS idx_incomes_user_created ON incomes(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_cards_user_created ON credit_cards(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_invitations_recipient_status ON shared_expense_invitations(recipient_email, status);
CREATE INDEX IF NOT EXISTS idx_invitations_expires ON shared_expense_invitations(expires_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
