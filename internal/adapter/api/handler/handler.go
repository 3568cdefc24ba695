package handler

import (
	"sharebin/internal/usecase"
)

var (
	fileHandler      *FileHandler
	shortLinkHandler *ShortLinkHandler
	adminHandler     *AdminHandler
	healthHandler    *HealthHandler
)

func Setup(
	uploadUseCase *usecase.UploadUseCase,
	shortLinkUseCase *usecase.ShortLinkUseCase,
	settingUseCase *usecase.SettingUseCase,
	quotaUseCase *usecase.QuotaUseCase,
	userUseCase *usecase.UserUseCase,
	reconcileUseCase *usecase.ReconcileUseCase,
	baseURL string,
) {
	fileHandler = NewFileHandler(uploadUseCase, baseURL)
	shortLinkHandler = NewShortLinkHandler(shortLinkUseCase, baseURL)
	adminHandler = NewAdminHandler(settingUseCase, quotaUseCase, userUseCase, reconcileUseCase)
	healthHandler = NewHealthHandler()
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetShortLinkHandler() *ShortLinkHandler {
	return shortLinkHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
