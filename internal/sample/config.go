package sample

// Config carries the walkthrough's parameters and secrets.
type Config struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	ClientOID      string
	SubscriptionID string
	Location       string
	ResourceGroup  string

	// VaultName reuses an existing vault instead of provisioning one.
	VaultName string

	// AccountName reuses an already-registered storage account.
	AccountName string

	// Azurite exercises SAS tokens against a local emulator.
	Azurite bool

	Debug bool
}
