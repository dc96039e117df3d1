// Package content holds the pure pieces of page generation: placeholder
// substitution, heuristic scoring, meta tags and the combination iterator.
// Nothing here touches the database or the network.
package content
