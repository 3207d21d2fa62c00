package component

// Node names the scene-graph node an entity drives. Renderer commands are
// addressed by this name.
type Node struct {
	Name string
}

var NodeComponent = NewComponent[Node]()
