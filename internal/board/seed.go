package board

// DefaultMembers is the roster a fresh board starts with.
var DefaultMembers = []string{"昌哥", "Regine", "Ellie", "Annie", "Jay"}

// DefaultIdentity is the current identity on a fresh board.
const DefaultIdentity = "昌哥"

// seedSnapshot builds the first-run state: the default roster and one demo task
// with a single report, both dated today.
func (s *Store) seedSnapshot() Snapshot {
	now := s.stamp()
	today := DateOf(now.Local())
	demo := Task{
		ID:          NewID("task"),
		Title:       "Create campaign key visual (Father's Day, style C)",
		Description: "Follow the brand guide, keep the light grid background, export a 1080x1080 version",
		Assignee:    "Ellie",
		Creator:     DefaultIdentity,
		DueDate:     today,
		Status:      StatusInProgress,
		Reports: []Report{{
			ID:     NewID("r"),
			Date:   today,
			Author: "Ellie",
			Text:   "60% done, first draft tomorrow.",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	members := make([]string, len(DefaultMembers))
	copy(members, DefaultMembers)
	return Snapshot{
		Members: members,
		Me:      DefaultIdentity,
		Tasks:   []Task{demo},
	}
}
