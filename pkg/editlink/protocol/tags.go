// Package protocol defines the editlink wire taxonomy: the command tags the
// editor client sends to the runtime, the event tags the runtime sends back,
// and the payload layout of each. Every framed message starts with a 4-byte
// little-endian tag; the tag alone determines how the rest of the payload is
// decoded.
package protocol

import "fmt"

// CommandType tags a client-to-runtime request.
type CommandType int32

const (
	CmdLookAtSelected CommandType = iota + 1
	CmdAddComponent
	CmdToggleGameMode
	CmdAddEntity
	CmdPointerDown
	CmdPointerUp
	CmdPointerMove
	CmdLoadUniverse
	CmdSaveUniverse
	CmdNewUniverse
	CmdSetWireframe
	CmdSetAnimableTime
	CmdPlayPauseAnimable
	CmdSetEntityPosition
	CmdMoveCamera
	CmdSetComponentProperty
	CmdGetProperties
)

var commandNames = map[CommandType]string{
	CmdLookAtSelected:       "look_at_selected",
	CmdAddComponent:         "add_component",
	CmdToggleGameMode:       "toggle_game_mode",
	CmdAddEntity:            "add_entity",
	CmdPointerDown:          "pointer_down",
	CmdPointerUp:            "pointer_up",
	CmdPointerMove:          "pointer_move",
	CmdLoadUniverse:         "load_universe",
	CmdSaveUniverse:         "save_universe",
	CmdNewUniverse:          "new_universe",
	CmdSetWireframe:         "set_wireframe",
	CmdSetAnimableTime:      "set_animable_time",
	CmdPlayPauseAnimable:    "play_pause_animable",
	CmdSetEntityPosition:    "set_entity_position",
	CmdMoveCamera:           "move_camera",
	CmdSetComponentProperty: "set_component_property",
	CmdGetProperties:        "get_properties",
}

func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int32(t))
}

// EventType tags a runtime-to-client notification. Command and event tags
// are separate namespaces; they only meet on opposite directions of the
// connection.
type EventType int32

const (
	EventEntityPosition EventType = iota + 1
	EventEntitySelected
	EventPropertyList
	EventLogMessage
)

var eventNames = map[EventType]string{
	EventEntityPosition: "entity_position",
	EventEntitySelected: "entity_selected",
	EventPropertyList:   "property_list",
	EventLogMessage:     "log_message",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int32(t))
}

// Severity classifies a runtime log message.
type Severity int32

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int32(s))
}
