// Package diagnostic provides structured errors, warnings and infos
// reported while linting form metadata.
//
// Key capabilities:
//   - Missing or duplicate control identity
//   - Unknown control types with "did you mean" suggestions
//   - Control shapes the mappers cannot bind (abnormal groups, multi-select)
package diagnostic
