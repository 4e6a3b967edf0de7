// Package taskboard implements the task and team bookkeeping exposed by
// the coordinator's create_task/update_task/list_tasks/get_task and
// create_team/get_team/list_teams operations (spec.md §4.5), including
// cycle rejection over blocked_by edges.
package taskboard
