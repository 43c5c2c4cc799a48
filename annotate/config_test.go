package annotate

import (
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSetFormatter(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetFormatter(7, 8))
	require.Equal(t, [6]int{0, 1, 2, 3, 7, 8}, cfg.Formatter)

	require.NoError(t, cfg.SetFormatter(4, 5, 6, 7))
	require.Equal(t, [6]int{4, 5, 6, 7, 7, 8}, cfg.Formatter)

	require.NoError(t, cfg.SetFormatter(5, 4, 3, 2, 1, 0))
	require.Equal(t, [6]int{5, 4, 3, 2, 1, 0}, cfg.Formatter)

	for _, n := range []int{0, 1, 3, 5, 7} {
		err := cfg.SetFormatter(make([]int, n)...)
		require.ErrorIs(t, err, ErrInvalidConfig, "%d 个值", n)
	}
	// 出错时不修改
	require.Equal(t, [6]int{5, 4, 3, 2, 1, 0}, cfg.Formatter)
}

func TestValidate(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), DefaultClsConfig(), DefaultDetConfig(), DefaultSegConfig(), DefaultPoseConfig()} {
		require.NoError(t, cfg.Validate(), cfg.TaskType)
	}

	bad := []func(c *Config){
		func(c *Config) { c.InDataWidth = 0 },
		func(c *Config) { c.OutDataHeight = -2 },
		func(c *Config) { c.DispWidth = 0 },
		func(c *Config) { c.Alpha = 1.5 },
		func(c *Config) { c.LabelOffsetMap = map[int]int{3: 1} },
		func(c *Config) { c.Formatter[2] = -1 },
		func(c *Config) { c.IgnoreIndex = -2 },
		func(c *Config) { c.ResultIndices = nil },
		func(c *Config) { c.ResultIndices = []int{0, -1} },
		func(c *Config) { c.Dataset = map[int]DatasetInfo{1: {RGBColor: []uint8{1, 2}}} },
	}
	for i, mod := range bad {
		cfg := DefaultDetConfig()
		mod(&cfg)
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "case %d", i)
	}

	cfg := DefaultClsConfig()
	cfg.TopN = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestNewUnknownTask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log = logs.NewTestingLog(t)

	a, err := New(cfg)
	require.ErrorIs(t, err, ErrUnknownTask)
	require.Nil(t, a)

	cfg.TaskType = "instance_segmentation"
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrUnknownTask)

	cfg.TaskType = TaskDetection
	cfg.InDataHeight = 0
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewTaskTypes(t *testing.T) {
	for _, cfg := range []Config{DefaultClsConfig(), DefaultDetConfig(), DefaultSegConfig(), DefaultPoseConfig()} {
		cfg.ModelName = "m"
		cfg.Log = logs.NewTestingLog(t)
		a, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, cfg.TaskType, a.TaskType())
		require.Equal(t, "Model: m", a.Title())
	}
}

func TestConfigIsCopied(t *testing.T) {
	cfg := DefaultDetConfig()
	cfg.Log = logs.NewTestingLog(t)
	cfg.Dataset = map[int]DatasetInfo{1: {ID: 1, Name: "car"}}
	a, err := New(cfg)
	require.NoError(t, err)

	// 创建之后修改调用方的配置不影响引擎
	cfg.Dataset[1] = DatasetInfo{ID: 1, Name: "bus"}
	cfg.LabelOffsetMap[0] = 10

	e := a.(*DetEngine)
	name, ok := e.className(e.classID(1))
	require.True(t, ok)
	require.Equal(t, "car", name)
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "person", DatasetInfo{Name: "person"}.DisplayName())
	require.Equal(t, "vehicle/car", DatasetInfo{SuperCategory: "vehicle", Name: "car"}.DisplayName())
}
