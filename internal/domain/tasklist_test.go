package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func sampleTasks() []Task {
	return []Task{
		{
			ID: "t1", Text: "Scout the perimeter", Priority: PriorityMedium, CreatedAt: 2,
			Subtasks: []Subtask{
				{ID: "s1", Text: "Check west flank"},
				{ID: "s2", Text: "Check east flank", Completed: true},
			},
		},
		{ID: "t2", Text: "Refuel", Completed: true, Priority: PriorityHigh, CreatedAt: 1, Subtasks: []Subtask{}},
	}
}

func TestAddTask_PrependsMediumIncompleteTask(t *testing.T) {
	list := sampleTasks()
	got := AddTask(list, "Plan the gala", testNow)

	require.Len(t, got, 3)
	added := got[0]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Plan the gala", added.Text)
	assert.False(t, added.Completed)
	assert.Equal(t, PriorityMedium, added.Priority)
	assert.Equal(t, testNow.UnixMilli(), added.CreatedAt)
	assert.NotNil(t, added.Subtasks)
	assert.Empty(t, added.Subtasks)
	assert.Equal(t, list, got[1:])
}

func TestAddTask_BlankTextIgnored(t *testing.T) {
	list := sampleTasks()
	for _, text := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, list, AddTask(list, text, testNow), "text=%q", text)
	}
}

func TestAddTask_FreshIDs(t *testing.T) {
	var list []Task
	for i := 0; i < 50; i++ {
		list = AddTask(list, "task", testNow)
	}
	seen := map[string]bool{}
	for _, task := range list {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestAddThenDelete_RoundTrip(t *testing.T) {
	list := sampleTasks()
	added := AddTask(list, "Temporary", testNow)
	assert.Equal(t, list, DeleteTask(added, added[0].ID))
}

func TestToggleTask_Involution(t *testing.T) {
	list := sampleTasks()
	once := ToggleTask(list, "t1")
	assert.True(t, once[0].Completed)
	assert.Equal(t, list, ToggleTask(once, "t1"))
}

func TestMutators_UnknownIDsAreNoOps(t *testing.T) {
	list := sampleTasks()
	cases := map[string][]Task{
		"toggle task":            ToggleTask(list, "missing"),
		"delete task":            DeleteTask(list, "missing"),
		"add subtask":            AddSubtask(list, "missing", "text"),
		"toggle subtask/task":    ToggleSubtask(list, "missing", "s1"),
		"toggle subtask/subtask": ToggleSubtask(list, "t1", "missing"),
		"delete subtask/task":    DeleteSubtask(list, "missing", "s1"),
		"delete subtask/subtask": DeleteSubtask(list, "t1", "missing"),
		"set priority":           SetPriority(list, "missing", PriorityLow),
		"append subtasks":        AppendSubtasks(list, "missing", []string{"a", "b"}),
	}
	for name, got := range cases {
		assert.Equal(t, list, got, name)
	}
}

func TestMutators_DoNotModifyInput(t *testing.T) {
	list := sampleTasks()
	snapshot := CloneTasks(list)

	_ = ToggleTask(list, "t1")
	_ = DeleteTask(list, "t2")
	_ = AddSubtask(list, "t1", "Check north flank")
	_ = ToggleSubtask(list, "t1", "s1")
	_ = DeleteSubtask(list, "t1", "s2")
	_ = SetPriority(list, "t1", PriorityHigh)
	_ = AddTask(list, "new", testNow)

	assert.Equal(t, snapshot, list)
}

func TestAddSubtask_AppendsToEnd(t *testing.T) {
	got := AddSubtask(sampleTasks(), "t1", "Check north flank")
	subs := got[0].Subtasks
	require.Len(t, subs, 3)
	assert.Equal(t, "Check north flank", subs[2].Text)
	assert.False(t, subs[2].Completed)
	assert.NotEmpty(t, subs[2].ID)
}

func TestAddSubtask_BlankTextIgnored(t *testing.T) {
	list := sampleTasks()
	assert.Equal(t, list, AddSubtask(list, "t1", "  "))
}

func TestToggleSubtask(t *testing.T) {
	got := ToggleSubtask(sampleTasks(), "t1", "s1")
	assert.True(t, got[0].Subtasks[0].Completed)
	assert.True(t, got[0].Subtasks[1].Completed)
	assert.Equal(t, 100, got[0].PercentComplete())
}

func TestDeleteSubtask(t *testing.T) {
	got := DeleteSubtask(sampleTasks(), "t1", "s1")
	require.Len(t, got[0].Subtasks, 1)
	assert.Equal(t, "s2", got[0].Subtasks[0].ID)
}

func TestAppendSubtasks_KeepsEveryTextInOrder(t *testing.T) {
	got := AppendSubtasks(sampleTasks(), "t2", []string{"a", "", "  ", "b"})
	subs := got[1].Subtasks
	require.Len(t, subs, 4)
	assert.Equal(t, []string{"a", "", "  ", "b"}, []string{subs[0].Text, subs[1].Text, subs[2].Text, subs[3].Text})
	ids := map[string]bool{}
	for _, s := range subs {
		assert.False(t, s.Completed)
		ids[s.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestAppendSubtasks_NoTexts(t *testing.T) {
	list := sampleTasks()
	assert.Equal(t, list, AppendSubtasks(list, "t1", nil))
}

func TestSetPriority(t *testing.T) {
	list := sampleTasks()
	got := SetPriority(list, "t1", PriorityHigh)
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Equal(t, list, SetPriority(list, "t1", Priority("URGENT")))
}

func TestFindTask(t *testing.T) {
	task, ok := FindTask(sampleTasks(), "t2")
	require.True(t, ok)
	assert.Equal(t, "Refuel", task.Text)

	_, ok = FindTask(sampleTasks(), "nope")
	assert.False(t, ok)
}
