// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"github.com/MakeNowJust/heredoc/v2"
)

// Template variable names.
const (
	VarRoutePrompt     = "route_prompt"
	VarRoutes          = "routes"
	VarReasoningPrompt = "reasoning_prompt"
	VarPrompt          = "prompt"
	VarEvaluatorPrompt = "evaluator_prompt"
	VarRatings         = "ratings"
	VarGeneratorPrompt = "generator_prompt"
	VarTask            = "task"
	VarSubtasks        = "subtasks"
	VarComposerPrompt  = "composer_prompt"
	VarWorkerPrompt    = "worker_prompt"
	VarOriginalTask    = "original_task"
	VarTaskType        = "task_type"
	VarTaskDescription = "task_description"
)

// Selector asks a model to pick one route for the input and explain why.
var Selector = heredoc.Doc(`
	{route_prompt}
	Available route options: {routes}
	First explain your reasoning, then provide your selection in this XML format:

	<reasoning>
	{reasoning_prompt}
	</reasoning>

	<selection>
	The chosen selection from the above routes.
	</selection>

	Input: {prompt}
`)

// Evaluator asks a model to rate a candidate solution and give feedback.
var Evaluator = heredoc.Doc(`
	{evaluator_prompt}

	Your sole function is to evaluate the provided task. Do not to attempt to solve the task or provide its solution.

	Here are the ratings: {ratings}
	Only output the rating that represents that all criteria are met if all criteria are met and you have no further suggestions for improvements.

	Output your evaluation concisely in the following format.

	<evaluation>{ratings}</evaluation>

	<feedback>
	What needs improvement and why.
	</feedback>
`)

// Generator asks a model for its reasoning and a revised answer.
var Generator = heredoc.Doc(`
	{generator_prompt}

	Your current task is: [user input].

	In your subsequent responses, demonstrate a clear understanding of the feedback by [specify how to show understanding, e.g., 'directly addressing each point,' 'providing a revised version with explanations of changes,' 'asking clarifying questions'].

	Output your answer concisely in the following format:

	<thoughts>
	[Your understanding of the task and feedback and how you plan to improve here]
	</thoughts>

	<response>
	[Your output and response for the task here]
	</response>
`)

// Task wraps the user input of an adaptive run.
var Task = heredoc.Doc(`
	<user input>
	{task}
	</user input>
`)

// Composer asks a model to analyze a task and split it into typed subtasks.
var Composer = heredoc.Doc(`
	{composer_prompt}

	Task: {task}

	Return your response in this format:

	<analysis>
	Based on your understanding of the task, propose a set of practical variations that could be implemented. For each variation, explain the specific problem it aims to solve or the specific improvement it aims to achieve, and how it differs from the original approach.
	</analysis>

	<tasks>
	{subtasks}
	</tasks>
`)

// Worker asks a model to complete one subtask.
var Worker = heredoc.Doc(`
	{worker_prompt}

	Return your response in this format:

	<response>
	Your content here, maintaining the specified style and fully addressing requirements.
	</response>
`)
