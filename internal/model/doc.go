// Package model defines the persisted entity shapes and the fixed
// document keys they are stored under. JSON tags match the on-device
// format byte for byte so existing stored data round-trips unchanged.
package model
