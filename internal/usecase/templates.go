package usecase

// Email template bodies. Placeholders are substituted with
// strings.ReplaceAll before sending.

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Verify your email</h2>
  <p>Thanks for signing up! Enter the code below to verify your email address:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{code}</p>
  <p>This code expires in 24 hours. If you didn't create an account, you can ignore this email.</p>
</body>
</html>`

const adminApprovalTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Admin signup approval needed</h2>
  <p><strong>{fullname}</strong> ({email}) requested an admin account.</p>
  <p>Approval code:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{code}</p>
  <p>The code expires in 24 hours. No admin privileges are granted until approval.</p>
</body>
</html>`

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {fullname}!</h2>
  <p>Your email has been verified and your account is ready.</p>
  <p>Browse our bootcamps and register for the one that fits you best.</p>
</body>
</html>`

const passwordResetRequestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Reset your password</h2>
  <p>We received a request to reset your password. Click the link below to set a new one:</p>
  <p><a href="{resetURL}">{resetURL}</a></p>
  <p>The link expires in 1 hour. If you didn't request this, you can ignore this email.</p>
</body>
</html>`

const passwordResetSuccessTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password reset successful</h2>
  <p>Your password has been changed. If this wasn't you, contact support immediately.</p>
</body>
</html>`

const registrationConfirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>You're in, {fullname}!</h2>
  <p>Your registration for <strong>{bootcampTitle}</strong> is confirmed.</p>
  <p>{dateText}</p>
  <p>We'll see you there.</p>
</body>
</html>`

const bootcampEndedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{bootcampTitle} has ended</h2>
  <p>Hi {fullname},</p>
  <p>The bootcamp has wrapped up. Thank you for taking part. Keep an eye on your submissions page for review results.</p>
</body>
</html>`

const orgSubmissionTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New Project Submission</h2>
  <p><strong>{fullname}</strong> ({email}) has submitted both projects for <strong>{bootcampTitle}</strong>.</p>
  <ul>
    <li>Project 1: <a href="{project1URL}">{project1URL}</a></li>
    <li>Project 2: <a href="{project2URL}">{project2URL}</a></li>
  </ul>
</body>
</html>`

const userSubmissionConfirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Submission received</h2>
  <p>Hi {fullname},</p>
  <p>We received your project submissions for <strong>{bootcampTitle}</strong>. Our team will review them and get back to you.</p>
</body>
</html>`

const projectApprovedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Project {projectNumber} approved</h2>
  <p>Hi {fullname},</p>
  <p>Your project {projectNumber} for <strong>{bootcampTitle}</strong> has been approved. Nice work!</p>
</body>
</html>`

const projectRejectedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Project {projectNumber} needs changes</h2>
  <p>Hi {fullname},</p>
  <p>Your project {projectNumber} for <strong>{bootcampTitle}</strong> was rejected.</p>
  <p>Reviewer feedback:</p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px;">{feedback}</blockquote>
  <p>You can re-upload a revised version from your submissions page.</p>
</body>
</html>`

const allProjectsApprovedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Congratulations, {fullname}!</h2>
  <p>Both of your projects for <strong>{bootcampTitle}</strong> have been approved. You have completed the bootcamp!</p>
</body>
</html>`
