// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the JSON shapes of the HTTP API.

Every endpoint responds with an APIResponse envelope whose Data field holds one
of the payload types in this package. Domain packages return these types
directly so handlers only wrap them.

Nullable media links are *string so that "no poster" encodes as null rather
than an empty string.
*/
package models
