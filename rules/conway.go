package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with two or three live neighbours, a dead cell is born with exactly three.
Every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return Born(neighbors)
}

// Survives reports whether a live cell with the given neighbour count stays alive
func Survives(neighbors int) bool {
	return neighbors == 2 || neighbors == 3
}

// Born reports whether a dead cell with the given neighbour count comes alive
func Born(neighbors int) bool {
	return neighbors == 3
}
