package cnst

// PrincipalKind identifies which kind of account a session token belongs to.
type PrincipalKind string

const (
	// PrincipalUser is an individual user account
	PrincipalUser PrincipalKind = "user"
	// PrincipalEnterprise is an enterprise account
	PrincipalEnterprise PrincipalKind = "enterprise"
)

func (k PrincipalKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the known principal kinds.
func (k PrincipalKind) Valid() bool {
	return k == PrincipalUser || k == PrincipalEnterprise
}

const (
	// CtxKeyClaims is the gin context key holding validated token claims
	CtxKeyClaims = "claims"
)
