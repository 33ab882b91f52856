// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library in a thread-safe
// singleton with user-friendly error messages. Domain types declare their
// constraints with `validate` struct tags and call ValidateStruct at
// construction or deserialization boundaries.
//
// # Quick Start
//
//	type Movie struct {
//	    Title      string   `validate:"omitempty"`
//	    Minutes    int      `validate:"min=0"`
//	    Genres     []string `validate:"min=1"`
//	    SystemName string   `validate:"required"`
//	}
//
//	if verr := validation.ValidateStruct(&movie); verr != nil {
//	    // verr.Errors() lists each failing field with tag and message
//	    return verr
//	}
//
// The returned *StructValidationError satisfies the error interface and keeps
// per-field detail (Field, Tag, Param, Value) for structured logging.
package validation
