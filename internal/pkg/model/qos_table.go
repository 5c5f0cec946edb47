package model

// Qos 对应 slurmdbd 数据库 qos_table 中状态查询所需的列. 这里只声明本服务
// 读取的子集, GORM 按声明的字段生成 SELECT 列表, 未声明的列不会被查询.
// Limits that can be NULL in the schema keep their zero value here; the
// textual TRES columns default to "" upstream.
type Qos struct {
	ID                    int32   `gorm:"column:id;primaryKey" json:"id"`
	Name                  string  `gorm:"column:name;unique" json:"name"`
	Description           string  `gorm:"column:description" json:"description"`
	Deleted               int8    `gorm:"column:deleted" json:"-"`
	GraceTime             uint32  `gorm:"column:grace_time" json:"grace_time"`
	Priority              uint32  `gorm:"column:priority" json:"priority"`
	Preempt               string  `gorm:"column:preempt" json:"preempt"`
	PreemptMode           int32   `gorm:"column:preempt_mode" json:"preempt_mode"`
	MaxWallDurationPerJob int32   `gorm:"column:max_wall_duration_per_job" json:"max_wall_duration_per_job"`
	MaxJobsPerUser        int32   `gorm:"column:max_jobs_per_user" json:"max_jobs_per_user"`
	MaxSubmitJobsPerUser  int32   `gorm:"column:max_submit_jobs_per_user" json:"max_submit_jobs_per_user"`
	MaxTresPJ             string  `gorm:"column:max_tres_pj" json:"max_tres_pj"`
	MaxTresPN             string  `gorm:"column:max_tres_pn" json:"max_tres_pn"`
	MaxTresPU             string  `gorm:"column:max_tres_pu" json:"max_tres_pu"`
	GrpTres               string  `gorm:"column:grp_tres" json:"grp_tres"`
	GrpJobs               int32   `gorm:"column:grp_jobs" json:"grp_jobs"`
	GrpWall               int32   `gorm:"column:grp_wall" json:"grp_wall"`
	UsageFactor           float64 `gorm:"column:usage_factor" json:"usage_factor"`
}

// Qoses is a slice of Qos.
type Qoses []Qos

// TableName implements gorm's tabler interface.
func (Qos) TableName() string { return "qos_table" }
