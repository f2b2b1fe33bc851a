// Package account contains the identity aggregate: user accounts with their
// role, hashed credential, activity flag and password-reset token.
package account
