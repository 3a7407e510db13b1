/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolve 将路径绝对化并解析符号链接，不要求路径存在。
func Resolve(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	} else {
		p = filepath.Clean(p)
	}
	// 符号链接解析（路径不存在时忽略）
	if _, err := os.Lstat(p); err == nil {
		if real, rerr := filepath.EvalSymlinks(p); rerr == nil {
			p = real
		}
	}
	return p, nil
}

// Exists 判断路径是否存在。不存在返回 (false,nil)。其它错误包装返回。
func Exists(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("路径不能为空")
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("检查路径时出错: %w", err)
}

// IsDir 判断路径是否为目录，不存在视作 false。
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("检查目录时出错: %w", err)
	}
	return info.IsDir(), nil
}

// Stem 返回最后路径元素去除单一末尾扩展后的主体。
// 多层扩展仅移除最后一段（a.tar.gz -> a.tar）；
// 前导点隐藏文件（.gitignore）不视为有扩展。
func Stem(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	base := filepath.Base(p)
	if base == "." || base == string(os.PathSeparator) {
		return "", fmt.Errorf("路径 '%s' 无有效基础名称", p)
	}
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base, nil
	}
	stem := base[:len(base)-len(ext)]
	if stem == "" {
		return base, nil
	}
	return stem, nil
}

// ReadFile 读取文件内容并计算 SHA-256 哈希。
// 返回内容字节切片、十六进制哈希字符串与错误。
func ReadFile(path string) ([]byte, string, error) {
	norm, _ := Resolve(path)
	content, err := os.ReadFile(norm)
	if err != nil {
		return nil, "", fmt.Errorf("无法读取文件 %s: %w", norm, err)
	}
	sum := sha256.Sum256(content)
	return content, hex.EncodeToString(sum[:]), nil
}

// WalkDir 遍历目录并按深度与扩展名过滤。
//   - maxDepth: -1 不限制；0 仅 root 文件；1 root+子目录；依次类推
//   - extensions: 允许的扩展集合（大小写不敏感，支持不带点；空集不过滤）
//
// 返回绝对规范化后的文件列表。
func WalkDir(root string, maxDepth int, sortResult bool, extensions []string) ([]string, error) {
	nRoot, err := Resolve(root)
	if err != nil {
		return nil, err
	}
	exist, err := Exists(nRoot)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, fmt.Errorf("根路径不存在: %s", nRoot)
	}
	if ok, err := IsDir(nRoot); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("根路径不是目录: %s", nRoot)
	}

	allowed := extSet(extensions)
	filterEnabled := len(allowed) > 0

	type node struct {
		path  string
		depth int
	}
	stack := []node{{path: nRoot, depth: 0}}
	files := make([]string, 0, 128)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if maxDepth >= 0 && current.depth > maxDepth {
			continue
		}
		entries, readErr := os.ReadDir(current.path)
		if readErr != nil {
			return nil, fmt.Errorf("读取目录失败 %s: %w", current.path, readErr)
		}
		for _, entry := range entries {
			fullPath := filepath.Join(current.path, entry.Name())
			if entry.IsDir() {
				if maxDepth < 0 || current.depth < maxDepth {
					stack = append(stack, node{path: fullPath, depth: current.depth + 1})
				}
				continue
			}
			if !filterEnabled || hasAllowedExt(entry.Name(), allowed) {
				files = append(files, fullPath)
			}
		}
	}
	if sortResult {
		stablePathSort(files)
	}
	return files, nil
}

// CollectFiles 对输入的混合路径（文件或目录）按扩展名与深度规则进行收集。
// 不存在的路径自动忽略；目录按 WalkDir 规则递归；结果去重，
// sortResult 为 true 时做稳定排序。
func CollectFiles(inputs []string, maxDepth int, extensions []string, sortResult bool) ([]string, error) {
	allowed := extSet(extensions)
	filterEnabled := len(allowed) > 0

	resultSet := make(map[string]struct{}, 64)
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		resolved, err := Resolve(in)
		if err != nil {
			return nil, fmt.Errorf("解析路径失败 '%s': %w", in, err)
		}
		exists, err := Exists(resolved)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		isDir, err := IsDir(resolved)
		if err != nil {
			return nil, err
		}
		if isDir {
			files, werr := WalkDir(resolved, maxDepth, false, extensions)
			if werr != nil {
				return nil, werr
			}
			for _, f := range files {
				resultSet[f] = struct{}{}
			}
			continue
		}
		if !filterEnabled || hasAllowedExt(filepath.Base(resolved), allowed) {
			resultSet[resolved] = struct{}{}
		}
	}

	out := make([]string, 0, len(resultSet))
	for p := range resultSet {
		out = append(out, p)
	}
	if sortResult {
		stablePathSort(out)
	}
	return out, nil
}

// extSet 规范化扩展集合（小写、带点）。
func extSet(exts []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[strings.ToLower(e)] = struct{}{}
	}
	return allowed
}

func hasAllowedExt(name string, allowed map[string]struct{}) bool {
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// stablePathSort 对路径进行跨平台稳定排序：主键为不区分大小写的值，次键为原值。
func stablePathSort(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ai := strings.ToLower(paths[i])
		aj := strings.ToLower(paths[j])
		if ai == aj {
			return paths[i] < paths[j]
		}
		return ai < aj
	})
}
