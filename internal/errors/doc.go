// Package errors provides structured errors for the rpg-tracker project.
//
// The rules engine itself never fails: out-of-range input is clamped or
// ignored. Errors only come from the edges, when a caller names something
// that does not exist, asks for something that is not allowed, or when the
// roster store cannot be read or written.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InvalidArgumentf("max HP must be at least 1, got %d", maxHP)
//
// Adding metadata:
//
//	err := errors.NotFound("resource not found").
//	    WithMeta("character_id", charID).
//	    WithMeta("resource_id", resourceID)
//
// Wrapping errors:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist roster")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // fresh start, nothing stored yet
//	}
//
//	code := errors.GetCode(err)
//	os.Exit(code.ExitCode())
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("level", input.Level, 1, 9, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound when no snapshot exists
//   - Wrap driver errors with context (code Internal)
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Return FailedPrecondition for actions that need confirmation
//   - Treat removal of missing entities as a no-op
//
// CLI layer:
//   - Print GetMessage(err) and exit with GetCode(err).ExitCode()
package errors
