// Package authorization decides who may do what.
//
// It answers three questions for the rest of the system: is this bearer
// token a live authenticated identity, does that identity hold a sufficient
// role, and may it touch a given project. Role comparison is rank based
// (member < manager < admin). Project access is tenancy first: a project in
// another organization reads as not found, never as forbidden, so callers
// cannot probe for foreign project IDs.
//
// Layering:
// - domain: sentinel errors
// - application: the evaluation service using explicit ports
// - ports: token decoding and directory boundaries satisfied structurally
//   by the token, session and workspace modules
package authorization
