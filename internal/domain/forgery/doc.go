// Package forgery models the blinding forgery against a signing oracle: the
// transient blinding context, the forgery result and the journal of queries
// the oracle answered.
package forgery
