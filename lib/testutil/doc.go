// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for assetpack packages.
//
// [WriteFile] and [ReadFile] wrap file fixtures so that setup failures
// abort the test instead of returning errors. [RequireFileContent]
// asserts that a file on disk holds exactly the expected bytes, which
// is the check most embedding tests end with.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no assetpack-internal dependencies.
package testutil
