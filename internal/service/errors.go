package service

import "errors"

var (
	// checkout validation
	ErrMissingRestaurantID = errors.New("missing restaurant ID in checkout request")
	ErrEmptyCart           = errors.New("no items in cart, please add items before checkout")
	ErrNoMenuItems         = errors.New("no menu items found for the restaurant")

	// authorization
	ErrNotAuthorized = errors.New("not authorized")

	// external dependencies
	ErrPaymentSession = errors.New("error while creating payment session")

	// auth flows
	ErrEmailTaken           = errors.New("user already exists with this email")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrGoogleAccount        = errors.New("this account uses Google Sign-In, please login with Google")
	ErrInvalidAuthCode      = errors.New("invalid or expired verification token")
	ErrRestaurantExists     = errors.New("restaurant already exists for this user")
	ErrImageRequired        = errors.New("image is required")
	ErrMissingRequiredField = errors.New("missing required field")
)
