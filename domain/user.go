package domain

// DefaultRole is assigned to a logged-in user when the backend response
// does not carry a role.
const DefaultRole = "customer"

// LoginSuccessMessage is the exact envelope message the backend returns on a
// successful login. Any other message string is treated as a login failure.
const LoginSuccessMessage = "登录成功"

// User is the authenticated storefront identity, built from the login
// response data. Owned exclusively by the session store; read-only elsewhere.
type User struct {
	ID       int64  `json:"id"`
	Phone    string `json:"phone"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
