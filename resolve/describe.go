package resolve

import (
	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/source"
)

// Option is one choice of an enumeration parameter.
type Option struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Parameter documents one input of the entry point.
type Parameter struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Options []Option `json:"enumOptions,omitempty"`
}

// Module documents a callable entry point.
type Module struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	FunctionName string      `json:"functionName"`
	Type         string      `json:"type"`
	Params       []Parameter `json:"params"`
}

// Descriptor is the registration metadata announced to a host.
type Descriptor struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Version         string      `json:"version"`
	RequiredVersion string      `json:"requiredVersion"`
	Description     string      `json:"description"`
	GlobalParams    []Parameter `json:"globalParams"`
	Modules         []Module    `json:"modules"`
}

// Describe returns the metadata of the resolve entry point. The pipeline never reads it.
func Describe() Descriptor {
	return Descriptor{
		ID:              "home_stream",
		Title:           "Home Stream",
		Version:         constant.Version,
		RequiredVersion: "0.0.1",
		Description:     "获取聚合VOD影片资源",
		GlobalParams: []Parameter{
			{
				Name:  "multiSource",
				Title: "是否启用聚合搜索",
				Type:  "enumeration",
				Options: []Option{
					{Title: "启用", Value: MultiSourceEnabled},
					{Title: "禁用", Value: "disabled"},
				},
			},
		},
		Modules: []Module{
			{
				ID:           "loadResource",
				Title:        "加载资源",
				FunctionName: "loadResource",
				Type:         "stream",
				Params: []Parameter{
					{Name: "seriesName", Title: "名称", Type: "input"},
					{
						Name:  "type",
						Title: "类型",
						Type:  "enumeration",
						Options: []Option{
							{Title: "剧集", Value: string(source.TV)},
							{Title: "电影", Value: string(source.Movie)},
						},
					},
					{Name: "season", Title: "季", Type: "input"},
					{Name: "episode", Title: "集", Type: "input"},
				},
			},
		},
	}
}
