/*
Package markov implements an in-memory Markov chain text generator.

A Generator tokenizes a corpus of short text entries (either into words or
into individual characters), folds it into a Model mapping each order-length
prefix window to the set of tokens observed to follow it, and synthesizes
new text by a random walk over that mapping. Whenever the walk reaches a
prefix with no recorded successor it restarts from a random head window,
so generation always reaches the requested minimum length.

Randomness is injectable per generation call, which makes seeded,
reproducible output possible in tests.
*/
package markov
