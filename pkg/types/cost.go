package types

// ServiceCost is the month-to-date spend of one AWS service
type ServiceCost struct {
	Service string
	Amount  float64
	Unit    string
}

// CostSummary aggregates month-to-date spend and the end-of-month forecast
type CostSummary struct {
	Start    string
	End      string
	Total    float64
	Unit     string
	Forecast float64
	Services []ServiceCost
}

// IdleResource is a resource that accrues cost without doing work
type IdleResource struct {
	Kind   string // "ebs-volume", "elastic-ip", "ec2-stopped", "rds-stopped", "elb-unused"
	ID     string
	Detail string
}
