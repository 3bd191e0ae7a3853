// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and validates identity tokens and password hashes.

Manager signs HS256 JWTs carrying the user ID and email, valid for 24
hours:

	mgr := auth.NewManager(cfg.JWTSecret)
	token, err := mgr.Generate(userID, email)
	claims, err := mgr.Validate(token)

Passwords are hashed with bcrypt at the default cost; HashPassword
rejects passwords shorter than 8 characters with ErrWeakPassword.
*/
package auth
