package state

// Navigator is the view/room state machine. Its states are Exterior and
// Interior×Room; it has no terminal state.
type Navigator struct {
	view View
	room Room
}

func NewNavigator() *Navigator {
	return &Navigator{view: Exterior, room: Living}
}

func (n *Navigator) View() View { return n.view }

// Room returns the last room selected. It is only meaningful while the view
// is Interior.
func (n *Navigator) Room() Room { return n.room }

// SwitchView moves to target and reports whether anything changed.
func (n *Navigator) SwitchView(target View) bool {
	if target != Exterior && target != Interior {
		return false
	}
	if n.view == target {
		return false
	}
	n.view = target
	return true
}

// SwitchRoom selects target while inside. Calls made outside are ignored.
func (n *Navigator) SwitchRoom(target Room) bool {
	if n.view != Interior || !target.valid() {
		return false
	}
	if n.room == target {
		return false
	}
	n.room = target
	return true
}

// InScope reports whether a node scoped to view and rooms is visible. An
// empty rooms list matches every room.
func (n *Navigator) InScope(view View, rooms []Room) bool {
	return InScope(App{View: n.view, Room: n.room}, view, rooms)
}

// InScope reports whether a node scoped to view and rooms is visible in a.
func InScope(a App, view View, rooms []Room) bool {
	if a.View != view {
		return false
	}
	if view != Interior || len(rooms) == 0 {
		return true
	}
	for _, r := range rooms {
		if r == a.Room {
			return true
		}
	}
	return false
}
