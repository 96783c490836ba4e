package repository

// Schema creates the survey store. Applied by `beaconctl init` and by the
// test suites; production deployments run the same statements via migration
// tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS org_nodes (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	kind       TEXT NOT NULL CHECK (kind IN ('division', 'department', 'team')),
	parent_id  TEXT REFERENCES org_nodes(id)
);

CREATE TABLE IF NOT EXISTS employees (
	id       TEXT PRIMARY KEY,
	team_id  TEXT NOT NULL REFERENCES org_nodes(id),
	active   INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS responses (
	id             TEXT PRIMARY KEY,
	submitted_at   TEXT NOT NULL,
	employee_ref   TEXT,
	team_id        TEXT NOT NULL,
	department_id  TEXT NOT NULL,
	division_id    TEXT NOT NULL,
	sentiment      INTEGER,
	clarity        INTEGER,
	workload       INTEGER,
	safety         INTEGER,
	leadership     INTEGER
);

CREATE INDEX IF NOT EXISTS idx_responses_submitted_at ON responses(submitted_at);
CREATE INDEX IF NOT EXISTS idx_responses_team ON responses(team_id);
CREATE INDEX IF NOT EXISTS idx_employees_team ON employees(team_id);
`
