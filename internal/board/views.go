package board

import "strings"

// AllAssignees is the assignee filter value that keeps every task.
const AllAssignees = "all"

// FilterByAssignee keeps the tasks assigned to assignee. AllAssignees returns
// tasks unchanged.
func FilterByAssignee(tasks []Task, assignee string) []Task {
	if assignee == AllAssignees {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Assignee == assignee {
			out = append(out, t)
		}
	}
	return out
}

// SearchByKeyword keeps the tasks whose title, description or assignee
// contains keyword, ignoring case. A blank keyword keeps everything.
func SearchByKeyword(tasks []Task, keyword string) []Task {
	if strings.TrimSpace(keyword) == "" {
		return tasks
	}
	needle := strings.ToLower(keyword)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		haystack := strings.ToLower(t.Title + " " + t.Description + " " + t.Assignee)
		if strings.Contains(haystack, needle) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByStatus partitions tasks into the four status buckets, keeping input
// order within each bucket. Every bucket is present, possibly empty. Tasks with
// an unknown status are dropped.
func GroupByStatus(tasks []Task) map[Status][]Task {
	groups := make(map[Status][]Task, len(statusOrder))
	for _, s := range statusOrder {
		groups[s] = []Task{}
	}
	for _, t := range tasks {
		if bucket, ok := groups[t.Status]; ok {
			groups[t.Status] = append(bucket, t)
		}
	}
	return groups
}

// Column is one status lane of the board.
type Column struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Tasks  []Task `json:"tasks"`
}

// View is the filtered, grouped board as the presentation layer renders it.
type View struct {
	Assignee string   `json:"assignee"`
	Keyword  string   `json:"keyword"`
	Columns  []Column `json:"columns"`
}

// BuildView runs the combined pipeline: assignee filter, then keyword search,
// then grouping. The columns come out in pipeline order.
func BuildView(tasks []Task, assignee, keyword string) View {
	groups := GroupByStatus(SearchByKeyword(FilterByAssignee(tasks, assignee), keyword))
	v := View{
		Assignee: assignee,
		Keyword:  keyword,
		Columns:  make([]Column, 0, len(statusOrder)),
	}
	for _, s := range statusOrder {
		v.Columns = append(v.Columns, Column{
			Status: s,
			Label:  s.Label(),
			Count:  len(groups[s]),
			Tasks:  groups[s],
		})
	}
	return v
}

// Board returns the current view for the given filters.
func (s *Store) Board(assignee, keyword string) View {
	return BuildView(s.Tasks(), assignee, keyword)
}

// Column returns the lane for status, or an empty column.
func (v View) Column(status Status) Column {
	for _, c := range v.Columns {
		if c.Status == status {
			return c
		}
	}
	return Column{Status: status, Label: status.Label(), Tasks: []Task{}}
}
