package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserExist               = errors.New("用户已存在")
	ErrUsernameInvalid         = errors.New("用户名不合法")
	ErrUsernameExist           = errors.New("用户名已存在")
	ErrEmailExist              = errors.New("邮箱已注册")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrPostNotPublished        = errors.New("帖子未发布")
	ErrSlugExist               = errors.New("帖子标识已存在")
	ErrPublishTimeLocked       = errors.New("已发布的帖子不能修改发布时间")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrFollowExist             = errors.New("用户已关注")
	ErrFollowSelf              = errors.New("用户不能关注自己")
	ErrFollowNotFound          = errors.New("未关注该用户")
	ErrNotificationNotFound    = errors.New("通知不存在")
	ErrMessageEmpty            = errors.New("消息不能为空")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserExist:               BadRequest,
	ErrUsernameInvalid:         BadRequest,
	ErrUsernameExist:           BadRequest,
	ErrEmailExist:              BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrPostNotFound:            NotFound,
	ErrPostNotPublished:        BadRequest,
	ErrSlugExist:               BadRequest,
	ErrPublishTimeLocked:       BadRequest,
	ErrCommentNotFound:         NotFound,
	ErrFollowExist:             BadRequest,
	ErrFollowSelf:              BadRequest,
	ErrFollowNotFound:          BadRequest,
	ErrNotificationNotFound:    NotFound,
	ErrMessageEmpty:            BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
