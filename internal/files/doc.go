// Package files provides filesystem operations for csvprep: discovery of
// candidate CSV files under a directory tree, and managed writes (directory
// creation, copies, and atomic in-place replacement via a temporary sibling).
package files
