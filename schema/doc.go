// Package schema defines the validation step that follows a merge.
//
// Validation and sanitization are pluggable. An Engine turns a Descriptor,
// whose rules this package never interprets, into a Validator and a
// Sanitizer:
//
//	mode, err := schema.Compile(descriptor, engine)
//	if err != nil {
//	    // the descriptor did not compile; mode is MergeOnly
//	}
//
// Compile never leaves the caller without a mode. A missing descriptor, a
// missing engine or a build failure all select MergeOnly, which passes merged
// maps through untouched. A successful build selects MergeValidateSanitize.
// The mode is fixed for the lifetime of the pipeline that owns it.
//
// Apply runs the mode on one merged map. Validation happens first; on
// success the sanitizer's output replaces the map in full. Failures are
// reported with ErrValidation, ErrSanitization or ErrPanic so callers can
// tell them apart with errors.Is.
//
// Descriptors can be loaded from YAML or JSON with LoadDescriptor and
// LoadDescriptorFile.
package schema
