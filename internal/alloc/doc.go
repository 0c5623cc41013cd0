// Package alloc provides the foundational allocation types for pitchshare.
//
// This package contains type definitions only. All other internal packages
// import alloc; alloc imports nothing internal. This ensures the allocation
// model remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - shares are integer percentages
//   - Row identity (Key) is session-scoped and carries no business meaning
//   - All JSON tags use snake_case
package alloc
