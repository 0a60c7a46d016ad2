// Package kb holds the support knowledge base: entry types, the loader that
// reads the static KB resource, and the relevance scorer that matches a
// free-text question against the loaded entries.
package kb
