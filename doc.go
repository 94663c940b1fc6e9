// Package identity implements credential authentication and bearer token
// issuance: registration and login orchestration, eager input validation,
// identity claim assembly, and HS256-signed JWT generation. Credential
// persistence, password hashing, and role membership live behind the
// UserStore interface; a bun-backed adapter is provided.
package identity
