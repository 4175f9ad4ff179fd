package tg

import (
	"github.com/larriantoniy/tg_session_keeper/internal/domain"
	"github.com/zelenin/go-tdlib/client"
)

func tdParams(sess *domain.Session, apiID int32, apiHash string, dbDir, filesDir string) *client.SetTdlibParametersRequest {
	lang := sess.LangCode
	if lang == "" {
		lang = "en"
	}

	systemVersion := sess.SystemVersion
	if systemVersion == "" {
		systemVersion = "Windows 10"
	}

	appVersion := sess.ApplicationVersion
	if appVersion == "" {
		appVersion = "2.0"
	}

	deviceModel := sess.DeviceModel
	if deviceModel == "" {
		deviceModel = "Desktop"
	}

	return &client.SetTdlibParametersRequest{
		UseTestDc:           false,
		DatabaseDirectory:   dbDir,
		FilesDirectory:      filesDir,
		UseFileDatabase:     false,
		UseChatInfoDatabase: true,
		UseMessageDatabase:  false,
		UseSecretChats:      false,
		ApiId:               apiID,
		ApiHash:             apiHash,
		SystemLanguageCode:  lang,
		DeviceModel:         deviceModel,
		SystemVersion:       systemVersion,
		ApplicationVersion:  appVersion,
	}
}
