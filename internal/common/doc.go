// Package common contains small generic slice helpers shared across packages.
package common
