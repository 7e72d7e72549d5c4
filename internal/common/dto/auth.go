package dto

// UserLoginRequest represents a user login request
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EnterpriseLoginRequest represents an enterprise login request
type EnterpriseLoginRequest struct {
	CNPJ     string `json:"cnpj" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Token        string   `json:"token"`
	Kind         string   `json:"kind"`
	ID           uint     `json:"id"`
	Capabilities []string `json:"capabilities"`
}

// UserRegisterRequest represents a request to register a user under the
// authenticated enterprise
type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	GroupID  *uint  `json:"groupId,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// EnterpriseRegisterRequest represents a request to register an enterprise
type EnterpriseRegisterRequest struct {
	CNPJ      string `json:"cnpj" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	TradeName string `json:"tradeName" binding:"required"`
	LegalName string `json:"legalName,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

// UserUpdateRequest represents an enterprise's changes to one of its
// users. A groupId of 0 clears the assignment.
type UserUpdateRequest struct {
	Name    string `json:"name,omitempty"`
	GroupID *uint  `json:"groupId,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// UserInfo represents the authenticated user's profile
type UserInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	GroupID *uint  `json:"groupId,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// EnterpriseInfo represents the authenticated enterprise's profile
type EnterpriseInfo struct {
	ID                 uint   `json:"id"`
	CNPJ               string `json:"cnpj"`
	TradeName          string `json:"tradeName"`
	LegalName          string `json:"legalName,omitempty"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	RegistrationStatus string `json:"registrationStatus,omitempty"`
}

// MeResponse represents the current principal with resolved capabilities
type MeResponse struct {
	Kind         string          `json:"kind"`
	User         *UserInfo       `json:"user,omitempty"`
	Enterprise   *EnterpriseInfo `json:"enterprise,omitempty"`
	Capabilities []string        `json:"capabilities"`
}
