/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package transcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderNameTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"默认模板", "{name}_{encoding}", "readme_utf-8"},
		{"序号补零", "{name}_{index:001}", "readme_003"},
		{"总数", "{name}_{index}_of_{count}", "readme_2_of_7"},
		{"大小写修饰", "{encoding:upper}", "UTF-8"},
		{"未知 token 原样保留", "{name}.{nope}", "readme.{nope}"},
		{"无闭合花括号原样输出", "{name}_{oops", "readme_{oops"},
		{"纯文本", "fixed", "fixed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderNameTemplate(tt.tmpl, "readme", "utf-8", 2, 7)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderNameTemplateDate(t *testing.T) {
	got := renderNameTemplate("{name}_{date:2006}", "a", "gbk", 1, 1)
	assert.Equal(t, "a_"+time.Now().Format("2006"), got)
}
