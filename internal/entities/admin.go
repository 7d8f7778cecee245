package entities

// AdminCredential is the capability token gating administrative operations.
// Possession of the credential the service was bootstrapped with authorizes
// privileged calls; authorization is checked by identity, never by inspecting
// the value. The id exists only for audit logging.
type AdminCredential struct {
	id string
}

// NewAdminCredential mints a credential. Called exactly once per deployment
// by the bootstrap routine; credentials constructed anywhere else will not
// match the one the orchestrators hold and are therefore useless.
func NewAdminCredential(id string) *AdminCredential {
	return &AdminCredential{id: id}
}

// ID returns the credential's audit identifier
func (a *AdminCredential) ID() string {
	if a == nil {
		return ""
	}
	return a.id
}
