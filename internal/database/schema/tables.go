// Package schema defines the database schema of the page builder.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS page_templates (
		id UUID PRIMARY KEY,
		owner_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		sections JSONB NOT NULL DEFAULT '[]'::jsonb,
		accent_color VARCHAR(20),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_page_templates_owner ON page_templates(owner_id, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS custom_variables (
		id UUID PRIMARY KEY,
		owner_id VARCHAR(255) NOT NULL,
		token VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		fallback_value TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (owner_id, token)
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id UUID PRIMARY KEY,
		owner_id VARCHAR(255) NOT NULL,
		template_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_owner ON campaigns(owner_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS campaign_contacts (
		id UUID PRIMARY KEY,
		campaign_id UUID NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255),
		email VARCHAR(255) NOT NULL,
		company VARCHAR(255),
		custom_message TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_campaign_contacts_campaign ON campaign_contacts(campaign_id)`,
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"page_templates",
	"custom_variables",
	"campaigns",
	"campaign_contacts",
}
