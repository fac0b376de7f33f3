// Package auth provides authentication and authorisation for the SmartBreak backend.
//
// It implements a 2-tier role model (estudiante → admin) with:
//   - Bcrypt password hashing (cost 10)
//   - Stateless JWT access tokens (HS256, signature-only validation)
//   - Email-based login with a uniform failure response
//   - First-boot admin seeding with a generated password
//
// Account status gates access after credentials are verified: a suspended
// account with a correct password receives a distinct rejection, while a
// wrong password always looks the same regardless of the account's state.
// Wire-facing JSON field names and client messages are in Spanish to match
// the mobile and web clients.
package auth
