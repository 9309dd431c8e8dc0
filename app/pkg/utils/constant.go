package utils

import "time"

const (
	WorkID                = "workId"
	LocalStore            = "/storage/localstore"
	ResolveRedisPrefix    = "upload:resolve"
	ResolveRedisTTl       = time.Second * 60 * 5
	MergeLockRedisPrefix  = "upload:merge"
	S3StoragePutThreadNum = 10
	BackendListPageSize   = 1000
)

// task types
const (
	TaskSessionAbort = "sessionAbort"
)

// task statuses
const (
	TaskStatusUndo    = 0
	TaskStatusRunning = 1
	TaskStatusFinish  = 2
	TaskStatusError   = 99
)

// worker pool and queue sizes
const (
	MaxWorker = 100
	MaxQueue  = 200
)

// retry cap for failed tasks
const (
	CompensationTotal = 5
)
