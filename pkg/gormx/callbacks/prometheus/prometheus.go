package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Callbacks 按语句类型和表名统计 SQL 执行时间
type Callbacks struct {
	Namespace  string
	Subsystem  string
	Name       string
	InstanceId string
	Help       string

	vector *prometheus.SummaryVec
}

func (c *Callbacks) Register(db *gorm.DB) error {
	vector := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      c.Name,
		Help:      c.Help,
		ConstLabels: map[string]string{
			"instance_id": c.InstanceId,
		},
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.9:   0.01,
			0.99:  0.005,
			0.999: 0.0001,
		},
	}, []string{"type", "table"})
	err := prometheus.Register(vector)
	if err != nil {
		return err
	}
	c.vector = vector

	err = db.Callback().Create().Before("*").
		Register("prometheus_create_before", c.before())
	if err != nil {
		return err
	}
	err = db.Callback().Create().After("*").
		Register("prometheus_create_after", c.after("create"))
	if err != nil {
		return err
	}
	err = db.Callback().Query().Before("*").
		Register("prometheus_query_before", c.before())
	if err != nil {
		return err
	}
	err = db.Callback().Query().After("*").
		Register("prometheus_query_after", c.after("query"))
	if err != nil {
		return err
	}
	err = db.Callback().Update().Before("*").
		Register("prometheus_update_before", c.before())
	if err != nil {
		return err
	}
	err = db.Callback().Update().After("*").
		Register("prometheus_update_after", c.after("update"))
	if err != nil {
		return err
	}
	err = db.Callback().Delete().Before("*").
		Register("prometheus_delete_before", c.before())
	if err != nil {
		return err
	}
	err = db.Callback().Delete().After("*").
		Register("prometheus_delete_after", c.after("delete"))
	if err != nil {
		return err
	}
	err = db.Callback().Raw().Before("*").
		Register("prometheus_raw_before", c.before())
	if err != nil {
		return err
	}
	return db.Callback().Raw().After("*").
		Register("prometheus_raw_after", c.after("raw"))
}

func (c *Callbacks) before() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		db.Set("start_time", time.Now())
	}
}

func (c *Callbacks) after(typ string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		val, _ := db.Get("start_time")
		start, ok := val.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		c.vector.WithLabelValues(typ, table).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}
