// Package classify partitions repository fleets by working-tree state and by
// current branch using concurrent backend inspection.
package classify
