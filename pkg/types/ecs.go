package types

import "time"

// Service represents an ECS service summary
type Service struct {
	Name           string
	Cluster        string
	Status         string
	TaskDefinition string
	RunningCount   int32
	DesiredCount   int32
}

// Task represents one ECS task of a service
type Task struct {
	ID        string
	ARN       string
	Status    string
	Health    string
	CPU       string
	Memory    string
	StartedAt time.Time
}

// Deployment represents an in-flight ECS deployment
type Deployment struct {
	ID     string
	Status string
}
