package postgres

const schema = `
CREATE TABLE IF NOT EXISTS ledger_meta (
	id             SMALLINT PRIMARY KEY CHECK (id = 1),
	total_supply   NUMERIC(78, 0) NOT NULL DEFAULT 0 CHECK (total_supply >= 0),
	owner          BYTEA NOT NULL CHECK (length(owner) = 20),
	validator_kind TEXT NOT NULL DEFAULT 'blacklist'
);

CREATE TABLE IF NOT EXISTS ledger_balances (
	address BYTEA PRIMARY KEY CHECK (length(address) = 20),
	amount  NUMERIC(78, 0) NOT NULL CHECK (amount > 0)
);

CREATE TABLE IF NOT EXISTS ledger_system_accounts (
	address BYTEA PRIMARY KEY CHECK (length(address) = 20)
);

CREATE TABLE IF NOT EXISTS ledger_banned (
	address BYTEA PRIMARY KEY CHECK (length(address) = 20)
);
`
