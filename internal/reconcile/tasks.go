package reconcile

import (
	"regexp"
	"strings"

	"github.com/SAP-F-2025/participation-service/internal/models"
)

// Task is one "[task][name](test, ...)" marker of a problem statement.
type Task struct {
	Name  string   `json:"task_name"`
	Tests []string `json:"tests"`
}

// TaskStatus is a task together with the status of its tests.
type TaskStatus struct {
	Task
	Status TestStatus `json:"status"`
}

// A test name may contain one parenthesised group, e.g. "testSort(int[])".
var taskPattern = regexp.MustCompile(`\[task\]\[([^\[\]]+)\]\(((?:[^(),]+(?:\([^()]*\)[^(),]*)?,?)+)\)`)

// ParseTasks extracts the task markers of a problem statement in order of appearance.
func ParseTasks(problemStatement string) []Task {
	matches := taskPattern.FindAllStringSubmatch(problemStatement, -1)
	tasks := make([]Task, 0, len(matches))
	for _, match := range matches {
		tasks = append(tasks, Task{
			Name:  strings.TrimSpace(match[1]),
			Tests: splitTestNames(match[2]),
		})
	}
	return tasks
}

// splitTestNames splits on commas that are not nested in parentheses.
func splitTestNames(raw string) []string {
	names := make([]string, 0)
	depth := 0
	start := 0
	for i, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				names = appendTestName(names, raw[start:i])
				start = i + 1
			}
		}
	}
	return appendTestName(names, raw[start:])
}

func appendTestName(names []string, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return names
	}
	return append(names, name)
}

// TaskStatuses partitions the tests of every task against the result.
func TaskStatuses(tasks []Task, result *models.Result) []TaskStatus {
	statuses := make([]TaskStatus, 0, len(tasks))
	for _, task := range tasks {
		statuses = append(statuses, TaskStatus{
			Task:   task,
			Status: Partition(task.Tests, result),
		})
	}
	return statuses
}
