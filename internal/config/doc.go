// Package config loads transitrepair's runtime configuration from
// environment variables, mirroring the teacher's direct os.Getenv style
// while adding struct-tag validation so a misconfigured deployment fails
// fast at startup instead of partway through a repair.
//
// Key features:
//   - Config: every tunable the engine's stages read, with `validate`
//     tags enforced via go-playground/validator.
//   - Load: reads os.Environ, applies defaults, validates, and returns
//     an error describing every violated constraint at once.
//
// Complexity: O(1) — config is loaded once at process startup.
package config
