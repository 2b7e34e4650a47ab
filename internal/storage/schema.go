// internal/storage/schema.go
package storage

// The partial unique index on loans is the storage-level backstop for the
// one-active-loan-per-item invariant; the lending engine enforces it first
// through the conditional availability flip.
const schema = `
CREATE TABLE IF NOT EXISTS holders (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS items (
	id           UUID PRIMARY KEY,
	title        TEXT NOT NULL,
	author       TEXT NOT NULL,
	availability TEXT NOT NULL DEFAULT 'available',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS loans (
	id          UUID PRIMARY KEY,
	item_id     UUID NOT NULL REFERENCES items (id),
	holder_id   UUID NOT NULL REFERENCES holders (id),
	loan_date   DATE NOT NULL,
	due_date    DATE NOT NULL,
	return_date DATE,
	status      TEXT NOT NULL DEFAULT 'active',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS loans_one_active_per_item
	ON loans (item_id) WHERE status = 'active';

CREATE INDEX IF NOT EXISTS loans_holder_idx ON loans (holder_id);
CREATE INDEX IF NOT EXISTS loans_due_date_idx ON loans (due_date) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS reminder_history (
	id            UUID PRIMARY KEY,
	loan_id       UUID NOT NULL REFERENCES loans (id),
	reminder_type TEXT NOT NULL,
	sent_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS reminder_history_loan_idx ON reminder_history (loan_id);
CREATE INDEX IF NOT EXISTS reminder_history_sent_idx ON reminder_history (sent_at DESC);
`
