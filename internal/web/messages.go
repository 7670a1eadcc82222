package web

import "strings"

// Messages is the text bundle for one UI language.
type Messages struct {
	Product       string
	Wizard        string
	StepTitles    map[string]string
	Environment   string
	Directories   string
	ColCheck      string
	ColRequired   string
	ColCurrent    string
	ColOK         string
	OSName        string
	VersionName   string
	Any           string
	Writable      string
	NotWritable   string
	Missing       string
	Unknown       string
	Blocked       string
	Previous      string
	Next          string
	Agree         string
	AgreementText string
	CreateText    string
	DoneText      string
	InstalledAt   string
	NotFound      string
	Back          string
}

var bundles = map[string]Messages{
	"zh": {
		Product: "bjyadmin",
		Wizard:  "安装向导",
		StepTitles: map[string]string{
			"agreement": "使用协议",
			"test":      "环境检测",
			"create":    "创建数据",
			"done":      "安装完成",
		},
		Environment:   "环境监测",
		Directories:   "目录权限",
		ColCheck:      "环境",
		ColRequired:   "最低配置",
		ColCurrent:    "当前配置",
		ColOK:         "是否符合",
		OSName:        "操作系统",
		VersionName:   "php版本",
		Any:           "不限",
		Writable:      "可写",
		NotWritable:   "不可写",
		Missing:       "不存在",
		Unknown:       "未知",
		Blocked:       "您的配置或权限不符合要求",
		Previous:      "上一步",
		Next:          "下一步",
		Agree:         "同意并继续",
		AgreementText: "本软件基于开源协议发布，您可以自由使用、修改和分发，但须保留原作者的版权声明。使用本软件造成的任何损失，作者不承担责任。",
		CreateText:    "请确认数据库配置后继续，安装程序将写入安装锁定文件。",
		DoneText:      "安装完成，请删除或保护安装目录。",
		InstalledAt:   "安装时间",
		NotFound:      "页面不存在",
		Back:          "返回安装向导",
	},
	"en": {
		Product: "bjyadmin",
		Wizard:  "Setup Wizard",
		StepTitles: map[string]string{
			"agreement": "License",
			"test":      "Environment",
			"create":    "Create Data",
			"done":      "Finished",
		},
		Environment:   "Environment",
		Directories:   "Directory permissions",
		ColCheck:      "Check",
		ColRequired:   "Required",
		ColCurrent:    "Current",
		ColOK:         "OK",
		OSName:        "Operating system",
		VersionName:   "PHP version",
		Any:           "any",
		Writable:      "writable",
		NotWritable:   "not writable",
		Missing:       "missing",
		Unknown:       "unknown",
		Blocked:       "Your configuration or permissions do not meet the requirements",
		Previous:      "Previous",
		Next:          "Next",
		Agree:         "Agree and continue",
		AgreementText: "This software is released under an open source license. You may use, modify and redistribute it provided the original copyright notice is kept. The authors accept no liability for any damage caused by its use.",
		CreateText:    "Confirm the database settings to continue. The installer will write its lock file.",
		DoneText:      "Installation complete. Remove or protect the installer directory.",
		InstalledAt:   "Installed at",
		NotFound:      "Page not found",
		Back:          "Back to the wizard",
	},
}

// MessagesFor returns the bundle for lang, defaulting to Chinese.
func MessagesFor(lang string) Messages {
	if m, ok := bundles[strings.ToLower(lang)]; ok {
		return m
	}
	return bundles["zh"]
}
